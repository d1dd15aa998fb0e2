package models

// StopMetadata represents a bus stop platform from the bundled stop directory
type StopMetadata struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"stop" validate:"required"`
	Platform string `json:"plattform"`
}

// StopResult combines a stop's metadata with its current departures
type StopResult struct {
	Stop       StopMetadata `json:"stop"`
	Departures []Departure  `json:"departures"`
}
