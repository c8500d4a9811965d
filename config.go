package datacloud

// In this file: session config.

import (
	"net/http"

	"github.com/sfdc-tools/datacloud/internal/network"
)

// config is the option set for the Session.
type config struct {
	limits     network.Limits
	apiVersion string // core REST API version, e.g. "v59.0"
	httpClient *http.Client
}

// defConfig is the default config used when initialising the session.
var defConfig = config{
	limits: network.DefLimits,
}
