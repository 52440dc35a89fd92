package wheatgrass

import (
	"reflect"
)

var (
	ErrorType     = TypeOf[error]()
	CloseableType = TypeOf[Closeable]()
)

// Closeable is an interface that can be used to close resources owned by
// components the injector instantiated.
type Closeable interface {
	Close() error
}

// TypeOf returns the reflect.Type of I, including interface types.
func TypeOf[I any]() reflect.Type {
	var i I
	t := reflect.TypeOf(i)
	if t == nil {
		t = reflect.TypeOf((*I)(nil)).Elem()
	}
	return t
}

func matchType(queryType, boundType reflect.Type) bool {
	if queryType == boundType {
		return true
	}
	if queryType.Kind() == reflect.Interface && boundType.Implements(queryType) {
		return true
	}
	return false
}
