package imagegen

const GenerateImagePath = "/api/generate-image"

type Request struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Response struct {
	ImageURL string `json:"imageUrl"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
