package driver

import (
	"context"

	"bus-track/internal/tracking-service/core/domain/dto"
)

type ITrackingService interface {
	RecordFix(ctx context.Context, deviceID string, req dto.FixRequestDto, source string) (dto.FixResponseDto, error)
	RegisterProfile(ctx context.Context, deviceID string, req dto.ProfileRequestDto) (dto.ProfileResponseDto, error)
}
