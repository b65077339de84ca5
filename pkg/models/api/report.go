package api

// Error is the JSON body returned for failed report requests.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
