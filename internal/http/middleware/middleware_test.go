package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"beryllium.app/bot/internal/http/middleware"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RequireAPIKey", func() {
	newRouter := func(key string) *gin.Engine {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.RequireAPIKey(key))
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		return router
	}

	serve := func(router *gin.Engine, header, value string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set(header, value)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("accepts the admin header", func() {
		Expect(serve(newRouter("secret"), middleware.AdminAPIKeyHeader, "secret").Code).To(Equal(http.StatusOK))
	})

	It("accepts a bearer token", func() {
		Expect(serve(newRouter("secret"), "Authorization", "Bearer secret").Code).To(Equal(http.StatusOK))
	})

	It("rejects a wrong key", func() {
		Expect(serve(newRouter("secret"), middleware.AdminAPIKeyHeader, "guess").Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a missing key", func() {
		Expect(serve(newRouter("secret"), "", "").Code).To(Equal(http.StatusUnauthorized))
	})

	It("stays closed when no key is configured", func() {
		Expect(serve(newRouter(""), middleware.AdminAPIKeyHeader, "").Code).To(Equal(http.StatusServiceUnavailable))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/boom", func(*gin.Context) {
			panic("boom")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})
})
