package mockapi

import (
	"fmt"
	"net/http"
	"strconv"

	"alumni-client/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleGetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	user, ok := s.store.GetUser(id)
	if !ok {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdateMe(c *gin.Context) {
	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid profile data")
		return
	}
	user, ok := s.store.UpdateUser(c.GetInt("user_id"), patch)
	if !ok {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleFollowers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	c.JSON(http.StatusOK, s.store.FollowersOf(id))
}

func (s *Server) handleFollowing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	c.JSON(http.StatusOK, s.store.FollowingOf(id))
}

func (s *Server) handleFollow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	followerID := c.GetInt("user_id")
	if id == followerID {
		respondError(c, http.StatusBadRequest, "cannot follow yourself")
		return
	}
	if !s.store.Follow(followerID, id) {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUnfollow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	s.store.Unfollow(c.GetInt("user_id"), id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "query parameter q is required")
		return
	}
	c.JSON(http.StatusOK, s.store.SearchUsers(query))
}

func (s *Server) handleAdminListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListUsers())
}

func (s *Server) handleAdminAddUser(c *gin.Context) {
	var input model.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid user data")
		return
	}
	c.JSON(http.StatusCreated, s.store.CreateUser(input))
}

func (s *Server) handleAdminRemoveUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	if !s.store.DeleteUser(id) {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAdminChangeStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required,oneof=active inactive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	user, ok := s.store.SetUserStatus(id, body.Status)
	if !ok {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleAdminRemoveEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	if !s.store.DeleteEvent(id) {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDonation(c *gin.Context) {
	var req model.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "invalid donation data")
		return
	}

	c.JSON(http.StatusCreated, model.DonationReceipt{
		TransactionID: uuid.NewString(),
		Status:        "completed",
		Amount:        req.Amount,
		Message:       fmt.Sprintf("donation of %.2f received", req.Amount),
	})
}

func (s *Server) handleCollegeRegister(c *gin.Context) {
	var reg model.CollegeRegistration
	if err := c.ShouldBindJSON(&reg); err != nil || reg.CollegeName == "" || reg.ContactEmail == "" {
		respondError(c, http.StatusBadRequest, "invalid registration data")
		return
	}

	admin := s.store.CreateUser(model.NewUser{
		Name:     reg.AdminUser.Name,
		Email:    reg.AdminUser.Email,
		Password: reg.AdminUser.Password,
		Role:     model.RoleAdmin,
	})

	c.JSON(http.StatusCreated, model.CollegeConfirmation{
		CollegeID: admin.ID,
		Message:   "college registered, pending review",
	})
}
