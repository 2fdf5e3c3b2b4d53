package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Login    string `json:"login" example:"user1"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	Login    string `json:"login" example:"newuser123"`
	Password string `json:"password" example:"P@ssw0rd!"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Login    string `json:"login" example:"user1"`
	} `json:"response"`
}

// RefreshTokenRequest : запрос на обновление пары токенов
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
}

// TokensResponse : пара токенов в ответе на login/register/refresh
type TokensResponse struct {
	Response struct {
		AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzUxMiJ9..."`
		RefreshToken string `json:"refresh_token" example:"vcSi0369y1I62wOpxZFpgZ..."`
	} `json:"response"`
}

// LogoutResponse : подтверждение завершения сессии
type LogoutResponse struct {
	Response struct {
		SessionUUID string `json:"session_uuid"`
		Revoked     bool   `json:"revoked" example:"true"`
	} `json:"response"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"описание ошибки"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"Операция выполнена успешно"`
}
