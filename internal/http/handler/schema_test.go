package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"beryllium.app/bot/internal/http/handler"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Schema", func() {
	var engine *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		engine.GET("/schema/:command", handler.Schema)
	})

	get := func(command string) (int, map[string]any) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schema/"+command, nil))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return w.Code, resp
	}

	It("describes the issue request", func() {
		code, schema := get("issue_infraction")

		Expect(code).To(Equal(http.StatusOK))
		Expect(schema["properties"]).To(HaveKey("user_id"))
		Expect(schema["properties"]).To(HaveKey("delete_message_seconds"))
		Expect(schema["additionalProperties"]).To(BeFalse())
	})

	It("lists known commands for an unknown name", func() {
		code, resp := get("nuke")

		Expect(code).To(Equal(http.StatusNotFound))
		Expect(resp["commands"]).To(ContainElement("issue_infraction"))
	})
})
