// Package catalog holds the clinic's static offerings: services, appointment
// time slots, and payment options. Everything here is read only.
package catalog

import "strings"

// Service is one bookable offering.
type Service struct {
	Title            string `json:"title"`
	Price            string `json:"price"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	Duration         string `json:"duration"`
}

// PaymentOption is a selectable payment label. No payment is processed.
type PaymentOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const (
	PaymentOnline    = "paystack"
	PaymentOnArrival = "arrival"
)

var services = []Service{
	{
		Title:            "Teeth Whitening",
		Price:            "₦35,000",
		ShortDescription: "Professional in-office whitening for a brighter, more confident smile.",
		LongDescription:  "Our safe and effective teeth whitening treatment removes stains from coffee, tea, and aging, giving you noticeably whiter teeth in just one session.",
		Duration:         "1-2 hours",
	},
	{
		Title:            "Hollywood Teeth Whitening",
		Price:            "₦68,000",
		ShortDescription: "Premium whitening treatment for dramatic, celebrity-style results.",
		LongDescription:  "Advanced whitening technology for maximum brightness. Perfect for special occasions or those seeking exceptional results.",
		Duration:         "2-3 hours",
	},
	{
		Title:            "Scaling & Polishing",
		Price:            "₦15,000",
		ShortDescription: "Professional cleaning to remove plaque and tartar buildup.",
		LongDescription:  "Thorough cleaning procedure that removes stubborn plaque and tartar, followed by polishing to make your teeth smooth and shiny.",
		Duration:         "45-60 mins",
	},
	{
		Title:            "Stain Removal + Scaling & Polishing",
		Price:            "₦35,000",
		ShortDescription: "Complete cleaning package with advanced stain removal.",
		LongDescription:  "Comprehensive cleaning that includes stain removal plus scaling and polishing for perfectly clean, bright teeth.",
		Duration:         "60-90 mins",
	},
	{
		Title:            "Gap Teeth Refill",
		Price:            "₦37,000",
		ShortDescription: "Close gaps between teeth for a more uniform smile.",
		LongDescription:  "Discreet and effective solution to close gaps between teeth using high-quality composite materials.",
		Duration:         "1-2 hours",
	},
	{
		Title:            "Composite Bonding",
		Price:            "₦45,000",
		ShortDescription: "Repair broken or chipped teeth with natural-looking results.",
		LongDescription:  "Restore damaged teeth using tooth-colored composite resin that bonds securely and looks completely natural.",
		Duration:         "1-2 hours",
	},
	{
		Title:            "gap tooth/alignment",
		Price:            "₦25,000",
		ShortDescription: "Close gaps between teeth for a more uniform smile.",
		LongDescription:  "Discreet and effective solution to close gaps between teeth using high-quality composite materials.",
		Duration:         "1-2 hours",
	},
	{
		Title:            "Veneers",
		Price:            "From ₦6,000,000",
		ShortDescription: "Enhance the shape, color, and alignment of your teeth for a brighter, more confident smile.",
		LongDescription:  "Veneers are thin, custom-crafted shells designed to cover the front surface of your teeth, instantly improving their appearance. They correct gaps, discoloration, uneven shapes, and minor misalignments, delivering a natural-looking and long-lasting smile transformation. Using premium dental materials, veneers provide strength, durability, and a flawless finish tailored to your facial features and smile goals.",
		Duration:         "1-2 hours",
	},
	{
		Title:            "Oral Detox Tongue Cleaning",
		Price:            "₦21,000",
		ShortDescription: "Remove toxins and bacteria from your tongue to improve your overall health.",
		LongDescription:  "Remove toxins and bacteria from your tongue to improve your overall health.",
		Duration:         "30 mins",
	},
	{
		Title:            "Tooth Decay Treatment",
		Price:            "₦35,000",
		ShortDescription: "Professional treatment to stop decay and restore tooth health.",
		LongDescription:  "Remove decay and protect your tooth with high-quality fillings that match your natural tooth color.",
		Duration:         "1 hour",
	},
	{
		Title:            "Dentures",
		Price:            "₦70,000 - ₦90,000",
		ShortDescription: "Custom-fitted dentures for comfortable tooth replacement.",
		LongDescription:  "High-quality, comfortable dentures tailored to fit your mouth perfectly and restore your smile and chewing function.",
		Duration:         "Multiple visits",
	},
	{
		Title:            "Gold Tooth Installation",
		Price:            "₦35,000",
		ShortDescription: "Durable and stylish gold tooth restorations.",
		LongDescription:  "Long-lasting gold crowns or inlays that combine strength with aesthetic appeal.",
		Duration:         "2-3 hours",
	},
	{
		Title:            "Dental Bridge",
		Price:            "From ₦180,000",
		ShortDescription: "Permanent solution for missing teeth.",
		LongDescription:  "Fixed dental bridges that replace missing teeth by anchoring to adjacent teeth, restoring your smile and bite function.",
		Duration:         "2-3 visits",
	},
	{
		Title:            "Fashion Braces",
		Price:            "₦70,000",
		ShortDescription: "Stylish braces for fashion-conscious individuals.",
		LongDescription:  "Colorful and fashionable braces that make orthodontic treatment fun and expressive.",
		Duration:         "18-24 months",
	},
	{
		Title:            "Ear spa",
		Price:            "₦28,000",
		ShortDescription: "Safe and gentle ear wax removal service.",
		LongDescription:  "Professional ear irrigation to safely remove excess ear wax and improve hearing comfort.",
		Duration:         "30 mins",
	},
}

var timeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM",
}

var paymentOptions = []PaymentOption{
	{Value: PaymentOnline, Label: "Book & Pay Online (Paystack)"},
	{Value: PaymentOnArrival, Label: "Pay on Arrival"},
}

// Services returns a copy of the service catalog in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// FindService looks a service up by exact title.
func FindService(title string) (Service, bool) {
	for _, s := range services {
		if s.Title == title {
			return s, true
		}
	}
	return Service{}, false
}

// HasService reports whether title names a catalog entry.
func HasService(title string) bool {
	_, ok := FindService(title)
	return ok
}

// TimeSlots returns the ordered list of bookable time labels.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// IsTimeSlot reports whether label is one of the allowed slots.
func IsTimeSlot(label string) bool {
	for _, slot := range timeSlots {
		if slot == label {
			return true
		}
	}
	return false
}

// PaymentOptions returns the selectable payment labels.
func PaymentOptions() []PaymentOption {
	out := make([]PaymentOption, len(paymentOptions))
	copy(out, paymentOptions)
	return out
}

// PaymentLabel returns the human label for a payment option value, or the
// value itself when unknown.
func PaymentLabel(value string) string {
	for _, opt := range paymentOptions {
		if strings.EqualFold(opt.Value, value) {
			return opt.Label
		}
	}
	return value
}

// IsPaymentOption reports whether value is a known payment option.
func IsPaymentOption(value string) bool {
	for _, opt := range paymentOptions {
		if opt.Value == value {
			return true
		}
	}
	return false
}
