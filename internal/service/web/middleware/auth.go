package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/model"
)

// VerifyAPIKey integration接口的共享密钥鉴权。密钥未配置时一律拒绝，
// 避免空配置放行所有请求。
func VerifyAPIKey(conf utils.IntegrationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := c.MustGet(model.XLogKey).(*xlog.Logger)
		requestID := xl.ReqId
		if conf.APIKey == "" {
			xl.Errorf("integration api key not configured")
			responseErr := model.NewResponseErrorInternal()
			resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusOK, resp)
			return
		}
		key := c.GetHeader(model.APIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(conf.APIKey)) != 1 {
			xl.Infof("invalid api key from %s", c.ClientIP())
			responseErr := model.NewResponseErrorUnauthorized()
			resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusOK, resp)
			return
		}
		c.Next()
	}
}
