package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"railbot/models"
	"railbot/services/booking"
	"railbot/utils"
)

// AddTrainRequest is the payload for creating a train.
type AddTrainRequest struct {
	Name      string `json:"name" binding:"required"`
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
	Departure string `json:"departure" binding:"required"`
	Arrival   string `json:"arrival" binding:"required"`
	Duration  string `json:"duration" binding:"required"`
	Seats     *int   `json:"seats" binding:"required"`
	Price     *int   `json:"price" binding:"required"`
}

// UpdateTrainRequest carries the mutable train fields; nil means unchanged.
type UpdateTrainRequest struct {
	Name  *string `json:"name"`
	Seats *int    `json:"seats"`
}

// GetTrainsHandler returns the full inventory as offer views.
func GetTrainsHandler(svc booking.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		offers, err := svc.ListTrains(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list trains", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list trains")
			return
		}
		if offers == nil {
			offers = []models.TrainOffer{}
		}
		c.JSON(http.StatusOK, offers)
	}
}

// AddTrainHandler creates a train.
func AddTrainHandler(svc booking.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		var req AddTrainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		id, err := svc.AddTrain(c.Request.Context(), models.Train{
			Name:      req.Name,
			Start:     req.Start,
			End:       req.End,
			Departure: req.Departure,
			Arrival:   req.Arrival,
			Duration:  req.Duration,
			Seats:     *req.Seats,
			Price:     *req.Price,
		})
		if err != nil {
			logger.Error("Failed to add train", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to add train")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Train added", "id": id})
	}
}

// UpdateTrainHandler applies partial updates to a train.
func UpdateTrainHandler(svc booking.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		var req UpdateTrainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		fields := map[string]interface{}{}
		if req.Name != nil {
			fields["name"] = *req.Name
		}
		if req.Seats != nil {
			fields["seats"] = *req.Seats
		}
		if len(fields) == 0 {
			utils.JSONError(c, http.StatusBadRequest, "No updatable fields provided")
			return
		}

		id := c.Param("id")
		if err := svc.UpdateTrain(c.Request.Context(), id, fields); err != nil {
			if errors.Is(err, booking.ErrTrainNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Train not found")
				return
			}
			logger.Error("Failed to update train", zap.String("id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update train")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Train " + id + " updated"})
	}
}

// DeleteTrainHandler removes a train from the inventory.
func DeleteTrainHandler(svc booking.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		id := c.Param("id")
		if err := svc.DeleteTrain(c.Request.Context(), id); err != nil {
			if errors.Is(err, booking.ErrTrainNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Train not found")
				return
			}
			logger.Error("Failed to delete train", zap.String("id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete train")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Train " + id + " deleted"})
	}
}
