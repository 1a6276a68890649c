package transport

import (
	"time"

	"learnkart/internal/domain"
	"learnkart/internal/service"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ProfileResponse is a child profile as the client sees it
type ProfileResponse struct {
	ID        string   `json:"id"`
	ChildName string   `json:"childName"`
	Age       int      `json:"age"`
	Grade     int      `json:"grade"`
	Board     string   `json:"board"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
	Apartment string   `json:"apartment"`
}

// ProductResponse carries interests comma-joined, the way the storefront renders them
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	AgeMin      int     `json:"ageMin"`
	AgeMax      int     `json:"ageMax"`
	GradeMin    int     `json:"gradeMin"`
	GradeMax    int     `json:"gradeMax"`
	Interests   string  `json:"interests"`
	ImageURL    string  `json:"imageUrl"`
}

// ServiceResponse is a tutoring or activity service listing
type ServiceResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TutorName      string  `json:"tutorName"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	AgeMin         int     `json:"ageMin"`
	AgeMax         int     `json:"ageMax"`
	Location       string  `json:"location"`
	Address        string  `json:"address"`
	Rating         float64 `json:"rating"`
	ReviewsCount   int     `json:"reviewsCount"`
	Interests      string  `json:"interests"`
	Experience     string  `json:"experience"`
	Qualifications string  `json:"qualifications"`
	Area           string  `json:"area"`
}

// CartLineResponse is one cart row priced at the product's current price
type CartLineResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// OrderResponse is a placed order with its item snapshot
type OrderResponse struct {
	ID            string              `json:"id"`
	TotalAmount   float64             `json:"totalAmount"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"paymentMethod"`
	CreatedAt     string              `json:"createdAt"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderItemResponse is a product line frozen at checkout
type OrderItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// BookingResponse is a booking joined with the service it is for
type BookingResponse struct {
	ID          string  `json:"id"`
	ServiceID   string  `json:"serviceId"`
	BookingType string  `json:"bookingType"`
	BookingDate string  `json:"bookingDate"`
	BookingTime string  `json:"bookingTime"`
	Status      string  `json:"status"`
	ServiceName string  `json:"serviceName,omitempty"`
	TutorName   string  `json:"tutorName,omitempty"`
	Address     string  `json:"address,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

func toProfileResponse(p domain.Profile) ProfileResponse {
	interests := []string(p.Interests)
	if interests == nil {
		interests = []string{}
	}
	return ProfileResponse{
		ID:        p.ID.String(),
		ChildName: p.ChildName,
		Age:       p.Age,
		Grade:     p.Grade,
		Board:     p.Board,
		Interests: interests,
		Location:  p.Location,
		Apartment: p.Apartment,
	}
}

func toProfileResponses(profiles []domain.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	return out
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		AgeMin:      p.Ages.Min,
		AgeMax:      p.Ages.Max,
		GradeMin:    p.Grades.Min,
		GradeMax:    p.Grades.Max,
		Interests:   p.Interests.String(),
		ImageURL:    p.ImageURL,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toServiceResponse(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:             s.ID.String(),
		Name:           s.Name,
		TutorName:      s.TutorName,
		Category:       s.Category,
		Description:    s.Description,
		Price:          s.Price,
		AgeMin:         s.Ages.Min,
		AgeMax:         s.Ages.Max,
		Location:       s.Location,
		Address:        s.Address,
		Rating:         s.Rating,
		ReviewsCount:   s.ReviewsCount,
		Interests:      s.Interests.String(),
		Experience:     s.Experience,
		Qualifications: s.Qualifications,
		Area:           s.Area,
	}
}

func toServiceResponses(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s))
	}
	return out
}

func toCartLineResponses(lines []domain.CartLine) []CartLineResponse {
	out := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, CartLineResponse{
			ID:          l.ID.String(),
			ProductID:   l.ProductID.String(),
			Quantity:    l.Quantity,
			Name:        l.Name,
			Price:       l.Price,
			ImageURL:    l.ImageURL,
			Description: l.Description,
			Total:       l.Total(),
		})
	}
	return out
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderItemResponse{
				ProductID: it.ProductID.String(),
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		out = append(out, OrderResponse{
			ID:            o.ID.String(),
			TotalAmount:   o.TotalAmount,
			Status:        o.Status,
			PaymentMethod: o.PaymentMethod,
			CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
			Items:         items,
		})
	}
	return out
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		ServiceID:   b.ServiceID.String(),
		BookingType: b.BookingType,
		BookingDate: b.BookingDate.Format(service.BookingDateLayout),
		BookingTime: b.BookingTime,
		Status:      b.Status,
	}
}

func toBookingResponses(bookings []domain.BookingDetail) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp := toBookingResponse(b.Booking)
		resp.ServiceName = b.ServiceName
		resp.TutorName = b.TutorName
		resp.Address = b.Address
		resp.Price = b.Price
		out = append(out, resp)
	}
	return out
}
