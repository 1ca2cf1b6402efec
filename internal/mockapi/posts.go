package mockapi

import (
	"net/http"
	"strconv"

	"alumni-client/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if size <= 0 {
		size = 10
	}
	c.JSON(http.StatusOK, s.store.ListPosts(page, size, c.GetInt("user_id")))
}

func (s *Server) handleCreatePost(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		respondError(c, http.StatusBadRequest, "cannot parse form data")
		return
	}
	content := c.PostForm("content")
	if content == "" {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	userID := c.GetInt("user_id")
	author, _ := s.store.GetUser(userID)

	post := &model.Post{
		Content: content,
		Author:  model.UserRef{ID: author.ID, Name: author.Name},
	}
	if file, err := c.FormFile("imageFile"); err == nil {
		post.ImageURL = "/uploads/posts/" + file.Filename
	}

	c.JSON(http.StatusCreated, s.store.CreatePost(post))
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	existing, ok := s.store.GetPost(id)
	if !ok {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}
	if existing.Author.ID != c.GetInt("user_id") {
		respondError(c, http.StatusForbidden, "only the author can edit this post")
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		respondError(c, http.StatusBadRequest, "cannot parse form data")
		return
	}
	content := c.PostForm("content")
	if content == "" {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	imageURL := ""
	if file, err := c.FormFile("imageFile"); err == nil {
		imageURL = "/uploads/posts/" + file.Filename
	}
	updated, _ := s.store.UpdatePost(id, content, imageURL)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	existing, ok := s.store.GetPost(id)
	if !ok {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	userID := c.GetInt("user_id")
	user, _ := s.store.GetUser(userID)
	if existing.Author.ID != userID && !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "only the author can delete this post")
		return
	}

	s.store.DeletePost(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleLikePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	if !s.store.LikePost(id, c.GetInt("user_id")) {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUnlikePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	if !s.store.UnlikePost(id, c.GetInt("user_id")) {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListComments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	if _, ok := s.store.GetPost(id); !ok {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}
	c.JSON(http.StatusOK, s.store.ListComments(id))
}

func (s *Server) handleAddComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	if _, ok := s.store.GetPost(id); !ok {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "comment text is required")
		return
	}

	author, _ := s.store.GetUser(c.GetInt("user_id"))
	comment := &model.Comment{
		PostID: id,
		Author: model.UserRef{ID: author.ID, Name: author.Name, Role: author.Role},
		Text:   body.Text,
	}
	c.JSON(http.StatusCreated, s.store.AddComment(comment))
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}
	if !s.store.DeleteComment(id) {
		respondError(c, http.StatusNotFound, "comment not found")
		return
	}
	c.Status(http.StatusNoContent)
}
