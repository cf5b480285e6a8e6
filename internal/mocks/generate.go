// Package mocks provides mock implementations for testing the gateway services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockApplicationRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(app, nil)
package mocks

// Generate mock for TextGenerator interface from internal/ports package.
// This creates MockTextGenerator with methods for all TextGenerator interface methods:
// Generate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=text_generator_mock.go github.com/launchpath/lp-gateway/internal/ports TextGenerator

// Generate mock for ApplicationRepository interface from internal/ports package.
// This creates MockApplicationRepository with methods for all ApplicationRepository interface methods:
// GetByID
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=application_repository_mock.go github.com/launchpath/lp-gateway/internal/ports ApplicationRepository
