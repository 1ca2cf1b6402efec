// Package mockapi 是实现后端 REST 契约的内存桩服务，
// 供集成测试和本地开发使用，不是生产后端。
package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server 组合路由、内存数据层和签名密钥
type Server struct {
	store  *Store
	secret string
}

func NewServer(secret string) *Server {
	return &Server{
		store:  NewStore(),
		secret: secret,
	}
}

// Store 暴露数据层，便于测试预置数据
func (s *Server) Store() *Store {
	return s.store
}

// respondError 统一的错误响应结构，与客户端的解析约定一致
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// Router 构建完整的 API 路由，额外的中间件（如 CORS）在路由注册前生效
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware...)

	api := r.Group("/api")
	{
		api.POST("/auth/login", s.handleLogin)

		authorized := api.Group("/")
		authorized.Use(s.authMiddleware())
		{
			authorized.GET("/auth/me", s.handleMe)
			authorized.POST("/auth/logout", s.handleLogout)

			// 活动
			authorized.GET("/events", s.handleListEvents)
			authorized.GET("/events/:id", s.handleGetEvent)
			authorized.POST("/events", s.handleCreateEvent)
			authorized.PUT("/events/:id", s.handleUpdateEvent)
			authorized.DELETE("/events/:id", s.handleDeleteEvent)
			authorized.POST("/events/:id/join", s.handleJoinEvent)
			authorized.DELETE("/events/:id/join", s.handleLeaveEvent)

			// 帖子与评论
			authorized.GET("/posts", s.handleListPosts)
			authorized.POST("/posts", s.handleCreatePost)
			authorized.PUT("/posts/:id", s.handleUpdatePost)
			authorized.DELETE("/posts/:id", s.handleDeletePost)
			authorized.POST("/posts/:id/like", s.handleLikePost)
			authorized.DELETE("/posts/:id/like", s.handleUnlikePost)
			authorized.GET("/posts/:id/comments", s.handleListComments)
			authorized.POST("/posts/:id/comments", s.handleAddComment)
			authorized.DELETE("/comments/:id", s.handleDeleteComment)

			// 用户主页与关注
			authorized.GET("/users/:id", s.handleGetUser)
			authorized.PUT("/users/me", s.handleUpdateMe)
			authorized.GET("/users/:id/followers", s.handleFollowers)
			authorized.GET("/users/:id/following", s.handleFollowing)
			authorized.POST("/users/:id/follow", s.handleFollow)
			authorized.DELETE("/users/:id/follow", s.handleUnfollow)

			// 搜索与捐赠
			authorized.GET("/search/users", s.handleSearchUsers)
			authorized.POST("/donations", s.handleDonation)

			// 管理员
			admin := authorized.Group("/admin")
			admin.Use(s.adminMiddleware())
			{
				admin.GET("/users", s.handleAdminListUsers)
				admin.POST("/users", s.handleAdminAddUser)
				admin.DELETE("/users/:id", s.handleAdminRemoveUser)
				admin.PATCH("/users/:id/status", s.handleAdminChangeStatus)
				admin.DELETE("/events/:id", s.handleAdminRemoveEvent)
			}
		}

		// 院校注册是公开接口
		api.POST("/colleges/register", s.handleCollegeRegister)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "resource not found")
	})
	return r
}
