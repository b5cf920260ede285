package classroom

import (
	"context"
	"encoding/json"
	"net/http"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/util"
	"classroom-chat/biz/infrastructure/util/log"
	"classroom-chat/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
)

// SendMessage 学生发送消息并获取AI回复
func SendMessage(ctx context.Context, c *app.RequestContext) {
	var req core.SendMessageReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ChatService.SendMessage(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetMessages 获取会话消息记录
func GetMessages(ctx context.Context, c *app.RequestContext) {
	var req core.GetMessagesReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ChatService.GetMessages(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SubscribeMessages 订阅会话消息流
func SubscribeMessages(ctx context.Context, c *app.RequestContext) {
	var req core.SubscribeMessagesReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	log.CtxInfo(ctx, "[SubscribeMessages] req=%s", util.JSONF(&req))

	c.SetStatusCode(http.StatusOK)
	w := sse.NewWriter(c)

	resultChan := make(chan string, 100)

	go func(ctx context.Context) {
		p := provider.Get()
		defer close(resultChan)
		p.ChatService.SubscribeMessages(ctx, &req, resultChan)
	}(adaptor.InjectContext(ctx, c))

	for jsonMessage := range resultChan {
		err := w.WriteEvent("", "", []byte(jsonMessage))
		if err != nil {
			log.Error("发送SSE事件失败: %v", err)
			break
		}

		var msgData util.StreamMessage
		json.Unmarshal([]byte(jsonMessage), &msgData)
		if msgData.Type == util.STError {
			log.CtxInfo(ctx, "[SubscribeMessages] 订阅错误: %+v", msgData)
			break
		}
	}
}
