package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"shuttle/internal/domains/court/model"
	"shuttle/shared"
	gDto "shuttle/shared/dto"
	gModel "shuttle/shared/model"
	"shuttle/shared/timezone"
)

type CreateCourtRequest struct {
	Number    int                   `json:"number" validate:"required,min=1"`
	Status    string                `json:"status" validate:"omitempty,oneof=available booked maintenance"`
	Image     *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (c *CreateCourtRequest) ToModel(user string, imageURL string) model.Court {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Court{
		ID:     uuid.NewString(),
		Number: c.Number,
		Status: status,
		Image:  imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCourtRequest struct {
	Number    *int                  `db:"number" json:"number"                                                                validate:"omitempty,min=1"`
	Status    *string               `db:"status" json:"status"                                                                validate:"omitempty,oneof=available booked maintenance"`
	Image     *multipart.FileHeader `json:"image" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type CourtResponse struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Image  string `json:"image"`
	gDto.Metadata
}

func (r *CourtResponse) FromModel(model model.Court) {
	r.ID = model.ID
	r.Number = model.Number
	r.Name = model.Name()
	r.Status = model.Status
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetCourtsResponse struct {
	Courts    []CourtResponse `json:"courts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCourtsResponse) FromModels(models []model.Court, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Courts = make([]CourtResponse, len(models))
	for i, mod := range models {
		r.Courts[i].FromModel(mod)
	}
}
