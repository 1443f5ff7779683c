package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	if out, ok := args.Get(0).(*sns.PublishOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSNSSender_Send(t *testing.T) {
	api := &mockSNS{}
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		sid, ok := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
		return aws.ToString(in.PhoneNumber) == "+15550001111" &&
			aws.ToString(in.Message) == "hello" &&
			in.TopicArn == nil &&
			ok && aws.ToString(sid.StringValue) == "Fridgella"
	})).Return(&sns.PublishOutput{MessageId: aws.String("m-1")}, nil).Once()

	s := NewSNSSender(api, "Fridgella")
	assert.NoError(t, s.Send(context.Background(), "+15550001111", "hello"))
	api.AssertExpectations(t)
}

func TestSNSSender_Error(t *testing.T) {
	api := &mockSNS{}
	api.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("opted out")).Once()

	err := NewSNSSender(api, "").Send(context.Background(), "+1555", "x")
	assert.ErrorContains(t, err, "opted out")
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{Logger: zap.NewNop().Sugar()}.Send(context.Background(), "+1", "m"))
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw, cc, want string
	}{
		{"+1 (555) 000-1111", "", "+15550001111"},
		{"0044 20 7946 0000", "", "+442079460000"},
		{"0771234567", "94", "+94771234567"},
		{"5550001111", "+1", "+15550001111"},
		{"5550001111", "", "+5550001111"},
		{"  ", "1", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizePhone(c.raw, c.cc), c.raw)
	}
}
