package otpravka

import "encoding/json"

// MailCategory is the service's mail category code.
type MailCategory string

const (
	CategorySimple            MailCategory = "SIMPLE"
	CategoryOrdinary          MailCategory = "ORDINARY"
	CategoryRegistered        MailCategory = "REGISTERED"
	CategoryWithDeclaredValue MailCategory = "WITH_DECLARED_VALUE"
	CategoryOrdered           MailCategory = "ORDERED"
)

// MailType is the service's mail type code.
type MailType string

const (
	MailPostalParcel  MailType = "POSTAL_PARCEL"
	MailOnlineParcel  MailType = "ONLINE_PARCEL"
	MailOnlineCourier MailType = "ONLINE_COURIER"
	MailEMS           MailType = "EMS"
	MailEMSOptimal    MailType = "EMS_OPTIMAL"
	MailLetter        MailType = "LETTER"
	MailBanderol      MailType = "BANDEROL"
)

// PrintType selects the F103 form flavour.
type PrintType string

const (
	PrintPaper      PrintType = "PAPER"
	PrintElectronic PrintType = "ELECTRONIC"
)

// Order is a shipment record in the backlog.
// Mass is in grams, monetary values are in kopecks.
type Order struct {
	ID              json.Number  `json:"id,omitempty"`
	OrderNum        string       `json:"order-num,omitempty"`
	AddressTypeTo   string       `json:"address-type-to,omitempty"`
	GivenName       string       `json:"given-name,omitempty"`
	Surname         string       `json:"surname,omitempty"`
	MiddleName      string       `json:"middle-name,omitempty"`
	MailCategory    MailCategory `json:"mail-category" validate:"required"`
	MailType        MailType     `json:"mail-type" validate:"required"`
	Mass            int          `json:"mass" validate:"gt=0"`
	RecipientName   string       `json:"recipient-name" validate:"required"`
	StrIndexTo      string       `json:"str-index-to" validate:"required"`
	IndexTo         int          `json:"index-to" validate:"gt=0"`
	RegionTo        string       `json:"region-to,omitempty"`
	AreaTo          string       `json:"area-to,omitempty"`
	PlaceTo         string       `json:"place-to,omitempty"`
	LocationTo      string       `json:"location-to,omitempty"`
	StreetTo        string       `json:"street-to" validate:"required"`
	HouseTo         string       `json:"house-to,omitempty"`
	RoomTo          string       `json:"room-to,omitempty"`
	CorpusTo        string       `json:"corpus-to,omitempty"`
	BuildingTo      string       `json:"building-to,omitempty"`
	HotelTo         string       `json:"hotel-to,omitempty"`
	NumAddressType  string       `json:"num-address-type-to,omitempty"`
	TelAddress      string       `json:"tel-address" validate:"required"`
	WoMailRank      bool         `json:"wo-mail-rank,omitempty"`
	DeclaredValue   int64        `json:"declared-value,omitempty" validate:"gte=0"`
	Fragile         bool         `json:"fragile,omitempty"`
	WithOrderNotice bool         `json:"with-order-of-notice,omitempty"`
	WithSimpleNote  bool         `json:"with-simple-notice,omitempty"`
	WithDeclared    bool         `json:"with-declared-value,omitempty"`
	IndexFrom       int          `json:"index-from,omitempty"`
	RegionFrom      string       `json:"region-from,omitempty"`
	PlaceFrom       string       `json:"place-from,omitempty"`
	StreetFrom      string       `json:"street-from,omitempty"`
	HouseFrom       string       `json:"house-from,omitempty"`
	BuildingFrom    string       `json:"building-from,omitempty"`
	CorpusFrom      string       `json:"corpus-from,omitempty"`
	RoomFrom        string       `json:"room-from,omitempty"`
	SenderName      string       `json:"sender-name,omitempty"`
	SenderPhone     string       `json:"sender-phone,omitempty"`
	Barcode         string       `json:"barcode,omitempty"`
}

// TariffRequest asks the service for a delivery quote.
type TariffRequest struct {
	IndexFrom         int          `json:"index-from" validate:"gt=0"`
	IndexTo           int          `json:"index-to" validate:"gt=0"`
	MailCategory      MailCategory `json:"mail-category" validate:"required"`
	MailType          MailType     `json:"mail-type" validate:"required"`
	Mass              int          `json:"mass" validate:"gt=0"`
	Fragile           bool         `json:"fragile"`
	WithOrderOfNotice bool         `json:"with-order-of-notice"`
	WithSimpleNotice  bool         `json:"with-simple-notice"`
	WithDeclaredValue bool         `json:"with-declared-value"`
	DeclaredValue     int64        `json:"declared-value" validate:"gte=0"`
}

// DeliveryTime is a delivery window in days.
type DeliveryTime struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TariffResponse is the quote computed by the service. Amounts are in kopecks.
type TariffResponse struct {
	DeliveryTime  *DeliveryTime `json:"delivery-time,omitempty"`
	TotalRate     int64         `json:"total-rate,omitempty"`
	VATRate       int64         `json:"vat-rate,omitempty"`
	TotalVAT      int64         `json:"total-vat,omitempty"`
	Weight        int           `json:"weight,omitempty"`
	DeliveryCost  int64         `json:"delivery-cost,omitempty"`
	InsuranceCost int64         `json:"insurance-cost,omitempty"`
	NoticeCost    int64         `json:"notice-cost,omitempty"`
	TotalCost     int64         `json:"total-cost,omitempty"`
}

// NormalizationRequest carries one free-text value to clean.
type NormalizationRequest struct {
	ID              string `json:"id" validate:"required"`
	OriginalAddress string `json:"original-address,omitempty" validate:"required_without_all=OriginalFIO OriginalPhone"`
	OriginalFIO     string `json:"original-fio,omitempty"`
	OriginalPhone   string `json:"original-phone,omitempty"`
}

// NormalizedAddress is the structured form of a cleaned address.
type NormalizedAddress struct {
	Index    string `json:"index,omitempty"`
	Region   string `json:"region,omitempty"`
	Area     string `json:"area,omitempty"`
	Place    string `json:"place,omitempty"`
	Location string `json:"location,omitempty"`
	Street   string `json:"street,omitempty"`
	House    string `json:"house,omitempty"`
	Building string `json:"building,omitempty"`
	Corpus   string `json:"corpus,omitempty"`
	Room     string `json:"room,omitempty"`
}

// NormalizedFIO is a cleaned full name.
type NormalizedFIO struct {
	Name       string `json:"name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Patronymic string `json:"patronymic,omitempty"`
}

// NormalizationResponse is the cleaned counterpart of a NormalizationRequest.
type NormalizationResponse struct {
	ID                string             `json:"id"`
	QualityCode       string             `json:"quality-code,omitempty"`
	ValidationCode    string             `json:"validation-code,omitempty"`
	OriginalAddress   string             `json:"original-address,omitempty"`
	NormalizedAddress *NormalizedAddress `json:"normalized-address,omitempty"`
	OriginalFIO       string             `json:"original-fio,omitempty"`
	NormalizedFIO     *NormalizedFIO     `json:"normalized-fio,omitempty"`
	OriginalPhone     string             `json:"original-phone,omitempty"`
	NormalizedPhone   string             `json:"normalized-phone,omitempty"`
}

// Batch is a named group of orders sharing a send date and origin office.
type Batch struct {
	Name               string `json:"batch-name" validate:"required"`
	SendingDate        string `json:"sending-date" validate:"required,datetime=2006-01-02"`
	ShipmentPointIndex string `json:"shipment-point-index" validate:"required"`
	Description        string `json:"description,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// WorkingHours is one day of a post office schedule.
type WorkingHours struct {
	Day   int    `json:"day"`
	Hours string `json:"hours"`
}

// Phone is a post office contact number.
type Phone struct {
	Number string `json:"number"`
	Type   string `json:"type,omitempty"`
}

// ServiceGroup is a group of services a post office offers.
type ServiceGroup struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// PostOffice is a physical office record. The flat fields at the end are the
// legacy shape some endpoints still return.
type PostOffice struct {
	AddressSource     string         `json:"address-source,omitempty"`
	Distance          float64        `json:"distance,omitempty"`
	IsClosed          bool           `json:"is-closed,omitempty"`
	IsPrivateCategory bool           `json:"is-private-category,omitempty"`
	IsTemporaryClosed bool           `json:"is-temporary-closed,omitempty"`
	Latitude          float64        `json:"latitude,omitempty"`
	Longitude         float64        `json:"longitude,omitempty"`
	PostalCode        string         `json:"postal-code,omitempty"`
	Region            string         `json:"region,omitempty"`
	Settlement        string         `json:"settlement,omitempty"`
	TypeCode          string         `json:"type-code,omitempty"`
	TypeID            int            `json:"type-id,omitempty"`
	WorkingHours      []WorkingHours `json:"working-hours,omitempty"`
	WorksOnSaturdays  bool           `json:"works-on-saturdays,omitempty"`
	WorksOnSundays    bool           `json:"works-on-sundays,omitempty"`
	Phones            []Phone        `json:"phones,omitempty"`
	ServiceGroups     []ServiceGroup `json:"service-groups,omitempty"`

	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	Index     string `json:"index,omitempty"`
	Phone     string `json:"phone,omitempty"`
	WorkHours string `json:"workHours,omitempty"`
	Type      string `json:"type,omitempty"`
	City      string `json:"city,omitempty"`
	Street    string `json:"street,omitempty"`
	House     string `json:"house,omitempty"`
	Building  string `json:"building,omitempty"`
	Corpus    string `json:"corpus,omitempty"`
	Room      string `json:"room,omitempty"`
}

// PostOfficeAddressQuery searches offices by free-text address.
type PostOfficeAddressQuery struct {
	Address string `validate:"required"`
	Top     int    `validate:"gte=0"` // 0 means the default of 10
}

// PostOfficeCoordinatesQuery searches offices around a point.
type PostOfficeCoordinatesQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Radius    int     `validate:"gte=0"` // meters; 0 means the default of 1000
	Filter    string  // "ALL" when empty
}

// UsageStats reports API request consumption.
type UsageStats struct {
	Total       int64  `json:"total"`
	Current     int64  `json:"current"`
	Limit       int64  `json:"limit"`
	PeriodStart string `json:"periodStart,omitempty"`
	PeriodEnd   string `json:"periodEnd,omitempty"`
}

type sendingDateBody struct {
	SendingDate string `json:"sendingDate"`
}
