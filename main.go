package main

import (
	"classroom-chat/biz/infrastructure/util/log"
	"classroom-chat/provider"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	opts := []config.Option{
		server.WithHostPorts(c.ListenOn),
	}
	if c.MetricsOn {
		opts = append(opts, server.WithTracer(prometheus.NewServerTracer(":9091", "/metrics")))
	}
	tracer, tracerCfg := hertztracing.NewServerTracer()
	opts = append(opts, tracer)

	h := server.Default(opts...)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	customizedRegister(h)

	log.Info("服务启动, listen=%s", c.ListenOn)
	h.Spin()
}
