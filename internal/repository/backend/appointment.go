package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/pkg/errors"
)

type appointmentDTO struct {
	ID              int64  `json:"id"`
	Pet             int64  `json:"pet"`
	PetName         string `json:"pet_name"`
	Service         int64  `json:"service"`
	ServiceName     string `json:"service_name"`
	ServicePrice    string `json:"service_price"`
	ServiceDuration int    `json:"service_duration"`
	ScheduleTime    string `json:"schedule_time"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type serviceDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

type AppointmentRepository struct {
	client *Client
}

func NewAppointmentRepository(client *Client) *AppointmentRepository {
	return &AppointmentRepository{client: client}
}

func (r *AppointmentRepository) List(ctx context.Context) ([]model.Appointment, error) {
	return r.list(ctx, nil)
}

func (r *AppointmentRepository) ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]model.Appointment, error) {
	query := url.Values{}
	query.Set("status", string(status))
	return r.list(ctx, query)
}

func (r *AppointmentRepository) list(ctx context.Context, query url.Values) ([]model.Appointment, error) {
	var dtos []appointmentDTO
	if err := r.client.get(ctx, pathAppointments, query, &dtos); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	appointments := make([]model.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		appointment, err := mapAppointment(dto)
		if err != nil {
			return nil, fmt.Errorf("map appointment %d: %w", dto.ID, err)
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var dto appointmentDTO
	if err := r.client.get(ctx, detailPath(pathAppointments, id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}

	appointment, err := mapAppointment(dto)
	if err != nil {
		return nil, fmt.Errorf("map appointment %d: %w", id, err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	payload := map[string]interface{}{
		"pet":                 req.PetID,
		"service":             req.ServiceID,
		"schedule_date":       req.ScheduleDate,
		"schedule_time_input": req.ScheduleTime,
		"notes":               req.Notes,
	}

	var dto appointmentDTO
	if err := r.client.post(ctx, pathAppointments, payload, &dto); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	appointment, err := mapAppointment(dto)
	if err != nil {
		return nil, fmt.Errorf("map created appointment: %w", err)
	}
	return &appointment, nil
}

// Cancel asks the backend to transition the booking and returns the fresh
// CANCELED snapshot the backend sends back.
func (r *AppointmentRepository) Cancel(ctx context.Context, id int64) (*model.Appointment, error) {
	var dto appointmentDTO
	if err := r.client.post(ctx, detailPath(pathAppointments, id)+"cancel/", map[string]interface{}{}, &dto); err != nil {
		return nil, fmt.Errorf("cancel appointment %d: %w", id, err)
	}

	appointment, err := mapAppointment(dto)
	if err != nil {
		return nil, fmt.Errorf("map canceled appointment: %w", err)
	}
	return &appointment, nil
}

// mapAppointment is the total wire-to-domain mapping for bookings. Unknown
// statuses and malformed timestamps fail instead of defaulting.
func mapAppointment(dto appointmentDTO) (model.Appointment, error) {
	status, err := model.ParseAppointmentStatus(dto.Status)
	if err != nil {
		return model.Appointment{}, err
	}

	scheduleTime, err := time.Parse(time.RFC3339, dto.ScheduleTime)
	if err != nil {
		return model.Appointment{}, errors.NewValidation(
			fmt.Sprintf("malformed schedule time %q", dto.ScheduleTime), err)
	}

	price := model.Money{}
	if dto.ServicePrice != "" {
		price, err = model.MoneyFromString(dto.ServicePrice)
		if err != nil {
			return model.Appointment{}, fmt.Errorf("service price: %w", err)
		}
	}

	return model.Appointment{
		ID:      dto.ID,
		PetID:   dto.Pet,
		PetName: dto.PetName,
		Service: model.Service{
			ID:              dto.Service,
			Name:            dto.ServiceName,
			Price:           price,
			DurationMinutes: dto.ServiceDuration,
		},
		ScheduleTime: scheduleTime,
		Status:       status,
		Notes:        dto.Notes,
	}, nil
}

type ServiceRepository struct {
	client *Client
}

func NewServiceRepository(client *Client) *ServiceRepository {
	return &ServiceRepository{client: client}
}

func (r *ServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	var dtos []serviceDTO
	if err := r.client.get(ctx, pathServices, nil, &dtos); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	services := make([]model.Service, 0, len(dtos))
	for _, dto := range dtos {
		service, err := mapService(dto)
		if err != nil {
			return nil, fmt.Errorf("map service %d: %w", dto.ID, err)
		}
		services = append(services, service)
	}
	return services, nil
}

func (r *ServiceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	var dto serviceDTO
	if err := r.client.get(ctx, detailPath(pathServices, id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}

	service, err := mapService(dto)
	if err != nil {
		return nil, fmt.Errorf("map service %d: %w", id, err)
	}
	return &service, nil
}

func mapService(dto serviceDTO) (model.Service, error) {
	price, err := model.MoneyFromString(dto.Price)
	if err != nil {
		return model.Service{}, fmt.Errorf("price: %w", err)
	}

	return model.Service{
		ID:              dto.ID,
		Name:            dto.Name,
		Description:     dto.Description,
		Price:           price,
		DurationMinutes: dto.DurationMinutes,
	}, nil
}
