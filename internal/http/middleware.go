package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"attar/internal/session"
)

const (
	sessionCookie = "sid"
	ctxSessionID  = "session_id"
	ctxSession    = "session_data"
)

// sessionMiddleware выдаёт cookie с id сессии и загружает документ сессии.
// Дальше по цепочке сессия доступна через s.sess(c); обработчики, которые
// её меняют, сохраняют её явно через s.saveSess(c).
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, 86400, "/", "", false, true)
		}

		data, err := s.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session storage unavailable"})
			return
		}

		c.Set(ctxSessionID, sid)
		c.Set(ctxSession, data)
		c.Next()
	}
}

func (s *Server) requireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.sess(c).CustomerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.sess(c).AdminID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
			return
		}
		c.Next()
	}
}

func (s *Server) sess(c *gin.Context) *session.Data {
	v, ok := c.Get(ctxSession)
	if !ok {
		return &session.Data{}
	}
	return v.(*session.Data)
}

func (s *Server) saveSess(c *gin.Context) error {
	sid := c.GetString(ctxSessionID)
	return s.sessions.Save(c.Request.Context(), sid, s.sess(c))
}
