package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/domain"
)

type Body struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Message    string             `json:"message,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Body{Success: true, Data: data})
}

func Created(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusCreated, Body{Success: true, Data: data, Message: message})
}

func Updated(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusOK, Body{Success: true, Data: data, Message: message})
}

// Message renders a success envelope without data, e.g. after a delete.
func Message(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, Body{Success: true, Message: message})
}

func Paginated(ctx *gin.Context, data any, page domain.Pagination) {
	ctx.JSON(http.StatusOK, Body{Success: true, Data: data, Pagination: &page})
}

type Healthcheck struct {
	Status string `json:"status"`
}
