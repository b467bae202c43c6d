package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/embedwire/umsg/internal/observability"
)

func adminRouter(cfg bridgeConfig) *gin.Engine {
	observability.RegisterMetrics()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"serial_device": cfg.SerialDevice,
			"tcp_addr":      cfg.TCPAddr,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
