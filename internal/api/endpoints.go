package api

const (
	// BaseURL is the base URL of the Stadtwerke Tübingen website
	BaseURL = "https://www.swtue.de"

	// EndpointDepartures returns the live departure board of one stop platform
	// Required params: halt
	EndpointDepartures = "/abfahrt.html"

	// ParamStop is the query parameter carrying the stop id
	ParamStop = "halt"
)
