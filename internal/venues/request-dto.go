package venues

type CreateCinemaRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	City    string `json:"city" binding:"required,min=2,max=120"`
	Address string `json:"address" binding:"max=500"`
}

// ProvisionHallRequest creates a hall either from an explicit template or by
// letting the selector choose one for a title.
type ProvisionHallRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=120"`
	TitleID      string `json:"title_id" binding:"required_without=TemplateName,omitempty,uuid"`
	TemplateName string `json:"template_name" binding:"omitempty,max=120"`
}

type SelectTemplateRequest struct {
	TitleID string `json:"title_id" binding:"required,uuid"`
	City    string `json:"city" binding:"required"`
}

type HallListQuery struct {
	CinemaID string `form:"cinema_id" binding:"omitempty,uuid"`
}
