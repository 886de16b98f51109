package types

import (
	"context"
	"fmt"

	"sticky/internal/app/client"
)

type contextKey string

// ClientAppKey - ключ контекста команды, под которым лежит *client.App
const ClientAppKey contextKey = "app"

// AppFromContext достает приложение, созданное в PersistentPreRunE
func AppFromContext(ctx context.Context) (*client.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// RequireSession возвращает email сессии или ошибку с подсказкой
func RequireSession(app *client.App) (string, error) {
	email, ok := app.Email()
	if !ok || email == "" {
		return "", fmt.Errorf("вход не выполнен, используйте: sticky auth login")
	}
	return email, nil
}
