package dto

type GenerateSlidesRequest struct {
	Content   string `json:"content" binding:"required"`
	NumSlides int    `json:"num_slides"`
}

type GenerateSlidesResponse struct {
	PptxFile string `json:"pptx_file"`
	JSONFile string `json:"json_file"`
}
