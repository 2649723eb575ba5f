package api

// Services bundles one client of every backend resource over a shared
// Client, so callers wire a single value.
type Services struct {
	Auth         *AuthService
	Museums      *MuseumService
	Paintings    *PaintingService
	Progress     *ProgressService
	Verification *VerificationService

	MuseumAdmin    *MuseumAdminService
	RouteAdmin     *RouteAdminService
	PaintingAdmin  *PaintingAdminService
	RouteStopAdmin *RouteStopAdminService
}

func NewServices(client *Client) *Services {
	return &Services{
		Auth:           NewAuthService(client),
		Museums:        NewMuseumService(client),
		Paintings:      NewPaintingService(client),
		Progress:       NewProgressService(client),
		Verification:   NewVerificationService(client),
		MuseumAdmin:    NewMuseumAdminService(client),
		RouteAdmin:     NewRouteAdminService(client),
		PaintingAdmin:  NewPaintingAdminService(client),
		RouteStopAdmin: NewRouteStopAdminService(client),
	}
}
