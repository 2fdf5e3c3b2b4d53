package requestresponse

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data struct {
		UUID             string `json:"uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
		Login            string `json:"login" example:"user1"`
		StorageUsedBytes int64  `json:"storage_used_bytes" example:"1048576"`
	} `json:"data"`
}

// RegisterResponse : успешный ответ на регистрацию
type RegisterResponse struct {
	Response struct {
		Login string `json:"login" example:"newuser123"`
	} `json:"response"`
}
