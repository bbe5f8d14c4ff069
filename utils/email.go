package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// Kênh gửi mail chọn lúc deploy (MAIL_MODE), không đổi theo từng request:
//   - "dev":  ghi vào log file append-only (MAIL_LOG_FILE)
//   - "smtp": gửi qua SMTP bằng gomail ("mail" cũng chấp nhận)
const (
	MailModeDev  = "dev"
	MailModeSMTP = "smtp"
)

type MailMessage struct {
	To          string
	Subject     string
	Body        string
	Attachments map[string][]byte // filename -> PNG bytes
}

func mailMode() string {
	switch os.Getenv("MAIL_MODE") {
	case MailModeSMTP, "mail":
		return MailModeSMTP
	default:
		return MailModeDev
	}
}

// SendMail gửi qua backend đã cấu hình. Lỗi trả về cho caller tự xử lý,
// không bao giờ panic giữa request.
func SendMail(msg MailMessage) error {
	if mailMode() == MailModeSMTP {
		return sendSMTP(msg)
	}
	return appendMailLog(msg)
}

func appendMailLog(msg MailMessage) error {
	path := os.Getenv("MAIL_LOG_FILE")
	if path == "" {
		path = filepath.Join("storage", "mail.log")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s ---\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "To: %s\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(&buf, "%s\n", msg.Body)
	for name := range msg.Attachments {
		fmt.Fprintf(&buf, "[attachment: %s]\n", name)
	}

	_, err = f.Write(buf.Bytes())
	return err
}

func sendSMTP(msg MailMessage) error {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	port, _ := strconv.Atoi(portStr)
	if port == 0 {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	for name, data := range msg.Attachments {
		content := data
		m.Attach(name, gomail.Rename(name), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(content))
			return err
		}))
	}

	d := gomail.NewDialer(host, port, username, password)
	return d.DialAndSend(m)
}

// OrderStatusData dữ liệu cho thông báo đổi trạng thái đơn hàng
type OrderStatusData struct {
	OrderId       uint
	OrderCode     string
	OldStatus     string
	NewStatus     string
	StatusMessage string
	OrderDate     string
	TotalAmount   float64
}

func orderStatusBody(data OrderStatusData) string {
	return fmt.Sprintf(
		"Order #%d (%s)\nStatus: %s -> %s\n%s\nOrder date: %s\nTotal amount: %.2f\n",
		data.OrderId, data.OrderCode, data.OldStatus, data.NewStatus,
		data.StatusMessage, data.OrderDate, data.TotalAmount,
	)
}

// SendOrderStatusEmail gửi cho khách hàng của đơn
func SendOrderStatusEmail(to string, data OrderStatusData) error {
	return SendMail(MailMessage{
		To:      to,
		Subject: fmt.Sprintf("Order #%d Status Update", data.OrderId),
		Body:    orderStatusBody(data),
	})
}

// SendOrderStatusAdminEmail gửi bản sao cho admin (ADMIN_EMAIL)
func SendOrderStatusAdminEmail(data OrderStatusData) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return nil
	}
	return SendMail(MailMessage{
		To: adminEmail,
		Subject: fmt.Sprintf("[Orders] Order #%d Status Changed (%s → %s)",
			data.OrderId, data.OldStatus, data.NewStatus),
		Body: orderStatusBody(data),
	})
}

// ReservationConfirmationData dữ liệu cho email xác nhận đặt bàn
type ReservationConfirmationData struct {
	PublicCode  string
	Name        string
	Date        string
	Time        string
	TableNumber int
	Guests      int
}

// SendReservationConfirmationEmail gửi email xác nhận kèm QR code của mã đặt bàn
func SendReservationConfirmationEmail(to string, data ReservationConfirmationData) error {
	body := fmt.Sprintf(
		"Xin chào %s,\n\nĐặt bàn %s của bạn đã được xác nhận.\nNgày: %s %s\nBàn số: %d\nSố khách: %d\n\nVui lòng đưa mã QR đính kèm khi đến nhà hàng.\n",
		data.Name, data.PublicCode, data.Date, data.Time, data.TableNumber, data.Guests,
	)

	msg := MailMessage{
		To:      to,
		Subject: "Xác nhận đặt bàn #" + data.PublicCode,
		Body:    body,
	}

	qrBytes, err := GenerateQRCode(data.PublicCode, 256)
	if err == nil {
		msg.Attachments = map[string][]byte{
			fmt.Sprintf("DatBan_%s.png", data.PublicCode): qrBytes,
		}
	}

	return SendMail(msg)
}
