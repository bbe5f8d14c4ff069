package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_STAFF = "STAFF"
)

const (
	ERROR_INTERNAL_ERROR       = "Lỗi hệ thống, vui lòng thử lại"
	ERROR_PARSE_DATA_TO_LOCALS = "Lỗi parse dữ liệu"
	DATA_INPUT_IS_NOT_NUMBER   = "Tham số phải là số"

	MISSING_LOGIN_INPUT   = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME      = "Tên đăng nhập không tồn tại"
	INVALID_PASSWORD      = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE    = "Tài khoản đã bị khoá"
	CAN_NOT_HASH_PASSWORD = "Không thể băm mật khẩu"

	RESERVATION_NOT_FOUND    = "Không tìm thấy đặt bàn"
	RESERVATION_SLOT_TAKEN   = "Bàn đã được đặt trong khung giờ này"
	RESERVATION_IN_PAST      = "Ngày đặt bàn không được ở quá khứ"
	RESERVATION_TOO_CLOSE    = "Quá sát giờ đặt bàn, không thể huỷ"
	RESERVATION_NOT_PENDING  = "Đặt bàn đã được xử lý"
	INVALID_STATUS_TRANSITON = "Chuyển trạng thái không hợp lệ"

	CART_EMPTY          = "Giỏ hàng trống"
	MENU_ITEM_NOT_FOUND = "Không tìm thấy món ăn"
	ORDER_NOT_FOUND     = "Không tìm thấy đơn hàng"
	ORDER_NO_CHANGE     = "Trạng thái không thay đổi"
)
