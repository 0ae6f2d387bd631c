package response

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error     string `json:"error"`                // 错误消息
	Details   string `json:"details,omitempty"`    // 原始错误，仅开发环境
	Path      string `json:"path,omitempty"`       // 未匹配的请求路径
	RequestID string `json:"request_id,omitempty"` // 请求ID
}

var exposeDetails atomic.Bool

// SetExposeDetails 设置错误响应是否携带 details
func SetExposeDetails(enabled bool) {
	exposeDetails.Store(enabled)
}

// ExposeDetails 错误响应是否携带 details
func ExposeDetails() bool {
	return exposeDetails.Load()
}

// Success 成功响应，直接输出数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(CodeCreated, data)
}

// Message 仅包含提示消息的成功响应
func Message(c *gin.Context, msg string) {
	c.JSON(CodeOK, gin.H{"message": msg})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{
		Error:     msg,
		RequestID: requestID(c),
	})
}

// ErrorWithDetails 错误响应，details 仅在开发环境输出
func ErrorWithDetails(c *gin.Context, statusCode int, msg string, details string) {
	if !ExposeDetails() {
		details = ""
	}
	c.JSON(statusCode, ErrorBody{
		Error:     msg,
		Details:   details,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// RouteNotFound 未匹配路由响应
func RouteNotFound(c *gin.Context) {
	path := ""
	if c != nil && c.Request != nil && c.Request.URL != nil {
		path = c.Request.URL.RequestURI()
	}
	c.JSON(CodeNotFound, ErrorBody{
		Error:     "Route not found",
		Path:      path,
		RequestID: requestID(c),
	})
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
