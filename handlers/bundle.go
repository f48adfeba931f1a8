package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	ChatStreamHandler gin.HandlerFunc
	GetChatHistory    gin.HandlerFunc
	ClearChatHandler  gin.HandlerFunc

	// Train inventory endpoints
	GetTrainsHandler   gin.HandlerFunc
	AddTrainHandler    gin.HandlerFunc
	UpdateTrainHandler gin.HandlerFunc
	DeleteTrainHandler gin.HandlerFunc
}
