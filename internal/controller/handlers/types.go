package handlers

import (
	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/service"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService *service.UserService
	taskService *service.TaskService
	logger      *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	taskService *service.TaskService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService: userService,
		taskService: taskService,
		logger:      logger,
	}
}
