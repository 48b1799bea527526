package booking

import (
	"errors"
	"fmt"
)

// Mutation-window and date errors carry the customer-facing text directly:
// the tool layer relays error messages verbatim to the chat agent.
var (
	ErrChangeWindow = errors.New("航班起飞前24小时内不允许修改预订信息")
	ErrCancelWindow = errors.New("航班起飞前48小时内不允许取消预订")
	ErrInvalidDate  = errors.New("航班日期格式无效，应为 yyyy-MM-dd")
)

// NotFoundError reports that no booking matched the joint
// bookingNumber+name key.
type NotFoundError struct {
	BookingNumber string
	Name          string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("未找到预订号为 %s，客户姓名为 %s 的航班预订", e.BookingNumber, e.Name)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
