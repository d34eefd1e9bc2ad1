package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/user"
)

// UserHandler handles account and game state requests
type UserHandler struct {
	userSvc user.Service
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userSvc user.Service) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// HandleCreateNewUser creates the account and starter farm, or renames an existing one
// @Summary Create a new user
// @Description Idempotent: creates the user with starter coins and a 3x3 farm; a repeat call only updates the name
// @Tags user
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User details"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functions/v1/create_new_user [post]
func (h *UserHandler) HandleCreateNewUser(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpCreateNewUser,
		func(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
			return h.userSvc.CreateNewUser(ctx, req.UserID, req.Name)
		},
		func(u *domain.User) interface{} { return DataResponse{Data: u} },
	)
}

// HandleUpdateUserData renames a user
// @Summary Update user data
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "New name"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/update_user_data [post]
func (h *UserHandler) HandleUpdateUserData(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpUpdateUserData,
		func(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
			return h.userSvc.UpdateUserData(ctx, req.UserID, req.Name)
		},
		func(u *domain.User) interface{} { return UserResponse{Success: true, User: u} },
	)
}

// HandleGetGameState returns the authoritative game state
// @Summary Get game state
// @Description User, inventory and farm plots. Crops past their ready time are promoted as a side effect.
// @Tags user
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /functions/v1/get_game_state [post]
func (h *UserHandler) HandleGetGameState(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpGetGameState,
		func(ctx context.Context, req UserRequest) (*domain.GameState, error) {
			return h.userSvc.GetGameState(ctx, req.UserID)
		},
		func(s *domain.GameState) interface{} { return DataResponse{Data: s} },
	)
}
