package mockapi

import (
	"net/http"
	"strings"
	"time"

	"alumni-client/internal/model"
	"alumni-client/internal/util"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// generateToken 为用户签发 24 小时有效的令牌
func (s *Server) generateToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(s.secret))
}

// validateToken 校验令牌并返回用户ID
func (s *Server) validateToken(tokenString string) (int, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return int(userID), true
}

// authMiddleware 校验 Bearer 令牌并把用户ID写入上下文
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			respondError(c, http.StatusUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		userID, ok := s.validateToken(parts[1])
		if !ok {
			respondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// adminMiddleware 确保只有管理员可以访问管理路由
func (s *Server) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		user, ok := s.store.GetUser(userID)
		if !ok || !user.IsAdmin() {
			util.Logger.Warn("非管理员访问管理接口", zap.Int("user_id", userID))
			respondError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginData); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request data")
		return
	}

	user, ok := s.store.Authenticate(loginData.Email, loginData.Password)
	if !ok {
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if user.Status == model.StatusInactive {
		respondError(c, http.StatusForbidden, "account is inactive")
		return
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, ok := s.store.GetUser(userID)
	if !ok {
		respondError(c, http.StatusUnauthorized, "user no longer exists")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	// 桩实现不维护令牌黑名单，登出即成功
	c.Status(http.StatusNoContent)
}
