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

// ListFiles 获取教室文件列表
func ListFiles(ctx context.Context, c *app.RequestContext) {
	var req core.ListFilesReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.FileService.ListFiles(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UploadFile 上传文件到教室共享区，SSE推送上传进度
func UploadFile(ctx context.Context, c *app.RequestContext) {
	joinCode := string(c.FormValue("joinCode"))
	if joinCode == "" {
		c.String(consts.StatusBadRequest, "joinCode is required")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	log.CtxInfo(ctx, "[UploadFile] joinCode=%s, file=%s, size=%d", joinCode, fh.Filename, fh.Size)

	c.SetStatusCode(http.StatusOK)
	w := sse.NewWriter(c)

	resultChan := make(chan string, 100)

	go func(ctx context.Context) {
		p := provider.Get()
		defer close(resultChan)
		p.FileService.UploadFile(ctx, joinCode, fh, resultChan)
	}(adaptor.InjectContext(ctx, c))

	for jsonMessage := range resultChan {
		err := w.WriteEvent("", "", []byte(jsonMessage))
		if err != nil {
			log.Error("发送SSE事件失败: %v", err)
			break
		}

		var msgData util.StreamMessage
		json.Unmarshal([]byte(jsonMessage), &msgData)
		if msgData.Type == util.STComplete {
			log.CtxInfo(ctx, "[UploadFile] 上传完成")
			break
		}
		if msgData.Type == util.STError {
			log.CtxInfo(ctx, "[UploadFile] 上传错误: %+v", msgData)
			break
		}
	}
}

// DeleteFile 删除教室文件
func DeleteFile(ctx context.Context, c *app.RequestContext) {
	var req core.DeleteFileReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.FileService.DeleteFile(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DownloadFile 获取文件下载链接
func DownloadFile(ctx context.Context, c *app.RequestContext) {
	var req core.DownloadFileReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.FileService.DownloadFile(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
