package model

// DeployStatusLive is the deploy status the hosting provider reports for a
// running service.
const DeployStatusLive = "live"

// DeployStatus describes the latest deploy of the hosted service.
type DeployStatus struct {
	Status string
}

// IsRunning reports whether the latest deploy is live.
func (d DeployStatus) IsRunning() bool {
	return d.Status == DeployStatusLive
}
