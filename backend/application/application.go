package application

import (
	"net/http"

	"github.com/kojsok/eveok-backend/backend/config"
	"github.com/kojsok/eveok-backend/backend/scan"
)

// App gathers the collaborators handlers need, the server in main implements
// it and tests substitute their own
type App interface {
	GetHTTPClient() *http.Client
	GetConfig() *config.Config
	GetScanStore() scan.Store
}
