package directory

import "errors"

var (
	// ErrInvalidEmployeeID は社員 ID が空の場合に返却されます。
	ErrInvalidEmployeeID = errors.New("directory: invalid employee id")
	// ErrInvalidFullName は氏名が空の場合に返却されます。
	ErrInvalidFullName = errors.New("directory: invalid full name")
	// ErrInvalidEmail はメールアドレスの形式が不正な場合に返却されます。
	ErrInvalidEmail = errors.New("directory: invalid email")
	// ErrInvalidDepartment は部署が空の場合に返却されます。
	ErrInvalidDepartment = errors.New("directory: invalid department")
	// ErrEmployeeNotFound は社員が存在しない場合に返却されます。
	ErrEmployeeNotFound = errors.New("directory: employee not found")
	// ErrEmployeeIDAlreadyExists は社員 ID が重複した場合に返却されます。
	ErrEmployeeIDAlreadyExists = errors.New("directory: employee id already exists")
	// ErrEmailAlreadyExists はメールアドレスが重複した場合に返却されます。
	ErrEmailAlreadyExists = errors.New("directory: email already exists")
)
