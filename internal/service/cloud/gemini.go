package cloud

import (
	"context"
	"time"

	"github.com/qiniu/x/xlog"
	"google.golang.org/genai"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/errors"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// CompletionService Gemini文本生成的薄封装。出题与评估共用。
type CompletionService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	xl      *xlog.Logger
}

func NewCompletionService(xl *xlog.Logger, config utils.GeminiConfig) (*CompletionService, error) {
	v := new(CompletionService)
	v.xl = xlog.New("completion service")
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		v.xl.Errorf("error create genai client err:%v", err)
		return nil, &errors.ServerError{Code: errors.ServerErrorGenerationFailed, Summary: err.Error()}
	}
	v.client = client
	v.model = config.Model
	if v.model == "" {
		v.model = DefaultGeminiModel
	}
	v.timeout = time.Duration(config.TimeoutSecond) * time.Second
	if v.timeout <= 0 {
		v.timeout = 60 * time.Second
	}
	return v, nil
}

// GenerateText 单轮生成，返回去除首尾空白前的原始文本。
func (v *CompletionService) GenerateText(ctx context.Context, xl *xlog.Logger, prompt string) (string, error) {
	if xl == nil {
		xl = v.xl
	}
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	result, err := v.client.Models.GenerateContent(ctx, v.model, genai.Text(prompt), nil)
	if err != nil {
		xl.Errorf("error generate content err:%v", err)
		return "", &errors.ServerError{Code: errors.ServerErrorGenerationFailed, Summary: err.Error()}
	}
	text, err := result.Text()
	if err != nil {
		xl.Errorf("error extract text from response err:%v", err)
		return "", &errors.ServerError{Code: errors.ServerErrorGenerationFailed, Summary: err.Error()}
	}
	if text == "" {
		xl.Errorf("error generate content: empty response")
		return "", &errors.ServerError{Code: errors.ServerErrorGenerationFailed, Summary: "empty model response"}
	}
	return text, nil
}
