package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/spf13/cast"
)

var client *HttpClient

// ragSystemPrompt 直连模式下的固定系统指令
const ragSystemPrompt = "Use the retrieval-augmented generation (RAG) prompt pattern to provide answers. " +
	"Context may include external knowledge provided in a structured format."

// HttpClient 是一个简单的 HTTP 客户端
type HttpClient struct {
	Client *http.Client
	Config *config.Config
}

// NewHttpClient 创建一个新的 HttpClient 实例
func NewHttpClient() *HttpClient {
	return &HttpClient{
		Client: &http.Client{},
		Config: config.GetConfig(),
	}
}

func GetHttpClient() *HttpClient {
	if client == nil {
		client = NewHttpClient()
	}
	return client
}

// SendRequest 发送 HTTP 请求并反序列化JSON响应
func (c *HttpClient) SendRequest(ctx context.Context, method, url string, headers map[string]string, body interface{}) (map[string]interface{}, error) {
	responseBody, statusCode, err := c.SendRequestRaw(ctx, method, url, headers, body)
	if err != nil {
		return nil, err
	}

	// 检查响应状态码
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", statusCode, responseBody)
	}

	// 反序列化响应体
	var responseMap map[string]interface{}
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}

	return responseMap, nil
}

// SendRequestRaw 发送 HTTP 请求并返回原始响应体与状态码
func (c *HttpClient) SendRequestRaw(ctx context.Context, method, url string, headers map[string]string, body interface{}) ([]byte, int, error) {
	// 将 body 序列化为 JSON
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("请求体序列化失败: %w", err)
	}

	// 创建新的请求
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置请求头
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// 发送请求
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error("关闭请求失败: %v", closeErr)
		}
	}()

	// 读取响应
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("读取响应失败: %w", err)
	}

	return responseBody, resp.StatusCode, nil
}

// SignUp 用于用户初始化
func (c *HttpClient) SignUp(ctx context.Context, email string, password string) (map[string]interface{}, error) {
	body := make(map[string]interface{})
	body["authType"] = "email"
	body["authId"] = email
	body["password"] = password
	body["appId"] = consts.AppId

	resp, err := c.SendRequest(ctx, consts.Post, c.Config.Api.PlatformURL+"/sts/sign_up", c.platformHeader(), body)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SignIn 用于用户登录
func (c *HttpClient) SignIn(ctx context.Context, email string, password string) (map[string]interface{}, error) {
	body := make(map[string]interface{})
	body["authType"] = "email"
	body["authId"] = email
	body["password"] = password
	body["appId"] = consts.AppId

	resp, err := c.SendRequest(ctx, consts.Post, c.Config.Api.PlatformURL+"/sts/sign_in", c.platformHeader(), body)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HttpClient) platformHeader() map[string]string {
	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson
	header["Charset"] = consts.CharSetUTF8

	// 如果是测试环境则向测试环境的中台发送请求
	if c.Config.State == "test" {
		header["X-Xh-Env"] = "test"
	}
	return header
}

// GetReply 获取AI回复，配置了RelayURL时走后端代理，否则直连OpenAI
// 两条路径都把响应规约成单个字符串，异常形态统一转成ErrRelay
func (c *HttpClient) GetReply(ctx context.Context, question string) (string, error) {
	if c.Config.Api.RelayURL != "" {
		return c.relayReply(ctx, question)
	}
	return c.openaiReply(ctx, question)
}

// relayReply 请求后端代理: {question} -> 纯文本 | {answer} | {error}
func (c *HttpClient) relayReply(ctx context.Context, question string) (string, error) {
	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson

	body := map[string]interface{}{"question": question}
	responseBody, statusCode, err := c.SendRequestRaw(ctx, consts.Post, c.Config.Api.RelayURL, header, body)
	if err != nil {
		log.Error("请求AI代理失败: %v", err)
		return "", consts.ErrTransport
	}

	var parsed any
	if unmarshalErr := json.Unmarshal(responseBody, &parsed); unmarshalErr != nil {
		// 代理允许返回非JSON的纯文本回答
		if statusCode >= 200 && statusCode < 300 {
			return string(responseBody), nil
		}
		log.Error("AI代理返回异常状态: %d, body: %s", statusCode, responseBody)
		return "", consts.ErrRelay
	}

	switch v := parsed.(type) {
	case string:
		if statusCode >= 200 && statusCode < 300 {
			return v, nil
		}
	case map[string]any:
		if errMsg, ok := v["error"]; ok {
			log.Error("AI代理返回错误: %s", cast.ToString(errMsg))
			return "", consts.ErrRelay
		}
		if answer, ok := v["answer"]; ok && statusCode >= 200 && statusCode < 300 {
			return cast.ToString(answer), nil
		}
	}

	log.Error("AI代理响应形态异常, status: %d, body: %s", statusCode, responseBody)
	return "", consts.ErrRelay
}

// openaiReply 直连OpenAI对话补全接口
func (c *HttpClient) openaiReply(ctx context.Context, question string) (string, error) {
	model := c.Config.Api.OpenaiModel
	if model == "" {
		model = consts.DefaultOpenaiModel
	}

	body := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": ragSystemPrompt},
			{"role": "user", "content": question},
		},
		"max_tokens":  150,
		"temperature": 0.7,
	}

	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson
	header["Authorization"] = "Bearer " + c.Config.Api.OpenaiKey

	resp, err := c.SendRequest(ctx, consts.Post, c.Config.Api.OpenaiURL, header, body)
	if err != nil {
		log.Error("请求OpenAI失败: %v", err)
		return "", consts.ErrRelay
	}

	choices, ok := resp["choices"].([]any)
	if !ok || len(choices) == 0 {
		log.Error("OpenAI响应缺少choices: %s", JSONF(resp))
		return "", consts.ErrRelay
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", consts.ErrRelay
	}
	msg, ok := choice["message"].(map[string]any)
	if !ok {
		return "", consts.ErrRelay
	}
	content := cast.ToString(msg["content"])
	if content == "" {
		return "", consts.ErrRelay
	}
	return content, nil
}
