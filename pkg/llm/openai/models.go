package openai

type imageSize string

const (
	size256x256   imageSize = "256x256"
	size512x512   imageSize = "512x512"
	size1024x1024 imageSize = "1024x1024"
	size1024x1792 imageSize = "1024x1792"
	size1792x1024 imageSize = "1792x1024"
)

type imageQuality string

const qualityStandard imageQuality = "standard"

type imageResponseFormat string

const imageResponseFormatURL imageResponseFormat = "url"

type imageRequest struct {
	Model          string              `json:"model"`
	Prompt         string              `json:"prompt"`
	N              int                 `json:"n"`
	Size           imageSize           `json:"size"`
	Quality        imageQuality        `json:"quality,omitempty"`
	ResponseFormat imageResponseFormat `json:"response_format"`
}

type imageResponse struct {
	Data []imageData `json:"data"`
}

type imageData struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
