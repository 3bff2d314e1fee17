package request

type UserProfileRequest struct {
	Phone                  string `form:"phone" validate:"max=20"`
	Address                string `form:"address"`
	BirthDate              string `form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	NewsletterSubscription bool   `form:"newsletter_subscription"`
}
