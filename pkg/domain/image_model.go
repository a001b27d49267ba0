package domain

const (
	DallE2Model    = "dall-e-2"
	DallE3Model    = "dall-e-3"
	FluxProUltra11 = "flux-1.1-pro-ultra"
)

const DefaultImageDimension = 1024

type ImageRequest struct {
	Model  string
	Prompt string
	Width  int
	Height int
}
