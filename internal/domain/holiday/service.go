package holiday

import "context"

type HolidayService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)

	// CheckHoliday answers isHoliday(businessId, date).
	CheckHoliday(ctx context.Context, date string) (HolidayCheckResponse, error)

	// WeeklyHolidayDates materialises the weekly-off dates of a month.
	WeeklyHolidayDates(ctx context.Context, req MonthRequest) (WeeklyHolidayDatesResponse, error)

	// MonthCalendar lists every holiday occurrence of a month.
	MonthCalendar(ctx context.Context, req MonthRequest) (MonthCalendarResponse, error)
}
