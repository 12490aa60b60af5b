package cloud

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/ai-interview/internal/common/utils"
	"github.com/solutions/ai-interview/internal/protodef/errors"
)

// MailService 面试邀请邮件。发送失败不影响面试创建，只做重试与日志。
type MailService struct {
	config utils.MailConfig
	xl     *xlog.Logger
}

func NewMailService(xl *xlog.Logger, config utils.MailConfig) *MailService {
	v := new(MailService)
	v.xl = xlog.New("mail service")
	v.config = config
	if v.config.RetryTimes <= 0 {
		v.config.RetryTimes = 1
	}
	return v
}

// InterviewInvite 邀请邮件的内容要素。口令只在这封邮件里出现一次。
type InterviewInvite struct {
	To            string
	CandidateName string
	CompanyName   string
	Role          string
	InterviewID   string
	Password      string
	LoginURL      string
	ExpiresAt     time.Time
}

func (v *MailService) SendInterviewInvite(xl *xlog.Logger, invite InterviewInvite) error {
	if xl == nil {
		xl = v.xl
	}
	if !v.config.Enabled {
		xl.Infof("mail disabled, skip invite for interview %s", invite.InterviewID)
		return nil
	}
	subject := fmt.Sprintf("Interview Invitation - %s", invite.Role)
	body := fmt.Sprintf("Dear %s,\r\n\r\n"+
		"%s has invited you to an AI interview for the role of %s.\r\n\r\n"+
		"Interview ID: %s\r\n"+
		"Password: %s\r\n"+
		"Login: %s\r\n\r\n"+
		"The link expires at %s.\r\n\r\n"+
		"Good luck!\r\n",
		invite.CandidateName, invite.CompanyName, invite.Role,
		invite.InterviewID, invite.Password, invite.LoginURL,
		invite.ExpiresAt.Format(time.RFC1123))
	msg := []byte("From: " + v.config.From + "\r\n" +
		"To: " + invite.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", v.config.SMTPHost, v.config.SMTPPort)
	auth := smtp.PlainAuth("", v.config.Username, v.config.Password, v.config.SMTPHost)
	var err error
	for i := 0; i < v.config.RetryTimes; i++ {
		err = smtp.SendMail(addr, auth, v.config.From, []string{invite.To}, msg)
		if err == nil {
			return nil
		}
		xl.Errorf("error send invite mail to %s attempt %d err:%v", invite.To, i+1, err)
		if i+1 < v.config.RetryTimes {
			time.Sleep(time.Duration(v.config.RetryIntervalSecond) * time.Second)
		}
	}
	return &errors.ServerError{Code: errors.ServerErrorMailSendFail, Summary: err.Error()}
}
