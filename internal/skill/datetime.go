package skill

import (
	"context"
	"fmt"
	"time"
)

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "星期日",
	time.Monday:    "星期一",
	time.Tuesday:   "星期二",
	time.Wednesday: "星期三",
	time.Thursday:  "星期四",
	time.Friday:    "星期五",
	time.Saturday:  "星期六",
}

// Datetime reports the current date and time. The clock is injectable for
// tests.
type Datetime struct {
	now func() time.Time
}

func NewDatetime() *Datetime {
	return &Datetime{now: time.Now}
}

func (d *Datetime) Name() string        { return "datetime" }
func (d *Datetime) Description() string { return "查询当前日期、时间和星期" }

func (d *Datetime) Execute(_ context.Context, _ map[string]string) (Result, error) {
	now := d.now()
	weekday := weekdayNames[now.Weekday()]
	return Result{
		Success: true,
		Data: map[string]any{
			"date":     now.Format("2006年01月02日"),
			"time":     now.Format("15:04"),
			"weekday":  weekday,
			"iso":      now.Format(time.RFC3339),
			"datetime": fmt.Sprintf("%s %s %s", now.Format("2006年01月02日"), weekday, now.Format("15:04")),
		},
	}, nil
}
