package response

// CreateGameResponse carries the minted game code
type CreateGameResponse struct {
	Code string `json:"code"`
}

// HealthResponse reports server liveness and how many games are running
type HealthResponse struct {
	Status string `json:"status"`
	Games  int    `json:"games"`
}
