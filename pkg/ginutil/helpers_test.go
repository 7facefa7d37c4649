package ginutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParamUint64(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParamUint64(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.Params = gin.Params{{Key: "id", Value: bad}}
		_, err := ParamUint64(c, "id")
		assert.Error(t, err, bad)
	}
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=3&limit=x", nil)

	assert.Equal(t, 3, QueryInt(c, "page", 1))
	assert.Equal(t, 20, QueryInt(c, "limit", 20))
	assert.Equal(t, 7, QueryInt(c, "missing", 7))
}
