package services

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// PushService delivers staff alerts (goal completions, new referrals)
// over Firebase Cloud Messaging.
type PushService struct {
	client *messaging.Client
}

// Global push service instance
var Push *PushService

// InitPush wires up FCM from a service account file. Without one the
// service still constructs, it just drops every send, so local setups
// need no Firebase project.
func InitPush(serviceAccountPath string) error {
	if serviceAccountPath == "" {
		log.Println("push: no FCM service account, staff alerts disabled")
		Push = &PushService{client: nil}
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Printf("push: firebase init failed, staff alerts disabled: %v", err)
		Push = &PushService{client: nil}
		return nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("push: messaging client failed, staff alerts disabled: %v", err)
		Push = &PushService{client: nil}
		return nil
	}

	Push = &PushService{client: client}
	log.Println("push: staff alerts enabled")
	return nil
}

// SendToUser pushes an alert to one staff member. Silently a no-op when
// push is disabled or the member never registered a device token.
func (p *PushService) SendToUser(userID uuid.UUID, title, body string, data map[string]string) {
	if p.client == nil {
		return
	}

	var user models.User
	if err := database.DB.Select("fcm_token").First(&user, userID).Error; err != nil {
		return
	}
	if user.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := p.client.Send(context.Background(), msg); err != nil {
		log.Printf("push: send to staff %s failed: %v", userID, err)
	}
}
