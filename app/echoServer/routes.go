package echoServer

import (
	"github.com/labstack/echo/v4"

	"litera/app/echoServer/controller/auth"
	"litera/app/echoServer/controller/book"
	"litera/app/echoServer/controller/note"
	"litera/app/echoServer/controller/reading"
)

type C struct {
	Auth    *auth.Controller
	Book    *book.Controller
	Reading *reading.Controller
	Note    *note.Controller

	JWTSecret      string
	AuthRatePerSec float64
	AuthRateBurst  int
}

func Register(e *echo.Echo, c C) {
	jwtMW := JWT(c.JWTSecret)

	// Public, rate limited per IP
	pub := e.Group("/auth")
	if c.AuthRatePerSec > 0 {
		pub.Use(RateLimit(c.AuthRatePerSec, c.AuthRateBurst))
	}
	pub.POST("/register", c.Auth.Register)
	pub.POST("/login", c.Auth.Login)
	pub.POST("/forgot-password", c.Auth.ForgotPassword)
	pub.POST("/reset-password", c.Auth.ResetPassword)
	pub.GET("/me", c.Auth.Me, jwtMW)

	// Protected
	api := e.Group("", jwtMW)

	// Books
	api.GET("/books", c.Book.List)
	api.POST("/books", c.Book.Create)
	api.GET("/books/:id", c.Book.Detail)
	api.PUT("/books/:id", c.Book.Update)
	api.DELETE("/books/:id", c.Book.Delete)
	api.GET("/books/:id/reading", c.Reading.ReadingID)
	api.GET("/books/:id/progress", c.Reading.History)

	// Timer and progress
	api.GET("/reading-timer/:bookId", c.Reading.GetTimer)
	api.POST("/reading-timer", c.Reading.SetTimer)
	api.POST("/current-readings", c.Reading.RecordProgress)
	api.POST("/progress-update", c.Reading.LogProgress)

	// Notes
	api.GET("/reading-notes", c.Note.List)
	api.POST("/reading-notes", c.Note.Create)
	api.PUT("/reading-notes/:id", c.Note.Update)
	api.DELETE("/reading-notes/:id", c.Note.Delete)
}
