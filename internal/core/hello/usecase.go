package hello

import "context"

// BannerMessage は稼働確認用のメッセージです。
const BannerMessage = "HRMS Lite API is running"

// Greeter は稼働確認メッセージを生成するユースケースのインターフェースを定義します。
type Greeter interface {
	// SayHello は呼び出し元へ返却するメッセージを生成します。
	SayHello(ctx context.Context) (string, error)
}

// Service は Greeter ユースケースのデフォルト実装です。
type Service struct {
	message string
}

// NewService は Greeter ユースケースの新しいインスタンスを返します。
func NewService() *Service {
	return &Service{message: BannerMessage}
}

// SayHello は稼働確認メッセージを返却します。
func (s *Service) SayHello(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.message, nil
}
