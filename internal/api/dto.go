package api

// Data shapes as the backend serves them. The backend owns persistence and
// the authoritative schema; these are transient client-side copies.

// Identity is the authenticated user as returned by /auth/me.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"userType"`
	Enabled   bool   `json:"enabled"`
}

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Museum struct {
	MuseumID    int64   `json:"museumId"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	IsActive    bool    `json:"isActive"`
	Routes      []Route `json:"routes,omitempty"`
}

type Route struct {
	RouteID     int64       `json:"routeId"`
	MuseumID    int64       `json:"museumId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	TotalStops  int         `json:"totalStops"`
	Stops       []RouteStop `json:"stops,omitempty"`
}

type RouteStop struct {
	RouteStopID    int64          `json:"routeStopId"`
	RouteID        int64          `json:"routeId,omitempty"`
	PaintingID     int64          `json:"paintingId"`
	SequenceNumber int            `json:"sequenceNumber"`
	Painting       *PaintingBasic `json:"painting,omitempty"`
}

type PaintingBasic struct {
	PaintingID  int64  `json:"paintingId"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        int    `json:"year,omitempty"`
	MuseumLabel string `json:"museumLabel,omitempty"`
}

type PaintingDetail struct {
	PaintingID          int64  `json:"paintingId"`
	MuseumID            int64  `json:"museumId"`
	Title               string `json:"title"`
	Artist              string `json:"artist"`
	Year                int    `json:"year,omitempty"`
	MuseumLabel         string `json:"museumLabel,omitempty"`
	ImageRecognitionKey string `json:"imageRecognitionKey,omitempty"`
	InfoTitle           string `json:"infoTitle,omitempty"`
	InfoText            string `json:"infoText,omitempty"`
	ExternalLink        string `json:"externalLink,omitempty"`
	StandardHints       []Hint `json:"standardHints,omitempty"`
	ExtraHints          []Hint `json:"extraHints,omitempty"`
}

type Hint struct {
	HintID       int64  `json:"hintId"`
	Text         string `json:"text"`
	DisplayOrder int    `json:"displayOrder"`
}

const (
	HintTypeStandard = "STANDARD"
	HintTypeExtra    = "EXTRA"
)

// RouteProgress is derived and owned by the backend; the client only reads
// it and triggers start/resume.
type RouteProgress struct {
	RouteID              int64          `json:"routeId"`
	RouteName            string         `json:"routeName,omitempty"`
	TotalStops           int            `json:"totalStops"`
	CompletedStops       int            `json:"completedStops"`
	CurrentStopNumber    int            `json:"currentStopNumber,omitempty"`
	CurrentPainting      *PaintingBasic `json:"currentPainting,omitempty"`
	NextPainting         *PaintingBasic `json:"nextPainting,omitempty"`
	CompletedPaintingIDs []int64        `json:"completedPaintingIds,omitempty"`
	IsCompleted          bool           `json:"isCompleted"`
}

// Completed reports whether the painting has already been found on this route.
func (p *RouteProgress) Completed(paintingID int64) bool {
	if p == nil {
		return false
	}
	for _, id := range p.CompletedPaintingIDs {
		if id == paintingID {
			return true
		}
	}
	return false
}

// VerificationResult is produced per scan attempt and never persisted
// client-side. PaintingDetails is only present on a match.
type VerificationResult struct {
	IsMatch         bool            `json:"isMatch"`
	ConfidenceScore float64         `json:"confidenceScore,omitempty"`
	Message         string          `json:"message"`
	PaintingDetails *PaintingDetail `json:"paintingDetails,omitempty"`
}
