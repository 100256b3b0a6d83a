package api

const taskPayloadMaxSize = 64 * 1024 // 64 KiB

type errorResponse struct {
	Error string `json:"error"`
}

type validationFailedResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

type messageResponse struct {
	Message string `json:"message"`
}
