package httpmsg_test

import (
	"fmt"

	"github.com/violet-web/httpmsg"
)

func ExampleRequestParser() {
	p := httpmsg.NewRequestParser(nil)

	// chunks arrive in whatever sizes the connection produced
	for _, chunk := range []string{
		"POST /orders HTTP/1.1\r\nContent-Ty",
		"pe: text/plain\r\nContent-Length: 1",
		"2\r\n\r\nhello orders",
	} {
		if _, err := p.Feed([]byte(chunk)); err != nil {
			fmt.Println("error:", err)
			return
		}
	}

	head := p.Header()
	fmt.Println(head.Method, head.Target)
	fmt.Println(head.ContentType())
	fmt.Println(string(p.Body()))
	// Output:
	// POST /orders
	// text/plain
	// hello orders
}

func ExampleResponseParser() {
	p := httpmsg.NewResponseParser(nil, nil)

	raw := "HTTP/1.1 100 Continue\r\n\r\n" +
		"HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"
	if _, err := p.Feed([]byte(raw)); err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, interim := range p.Interim() {
		fmt.Println("interim:", interim.Code)
	}
	fmt.Println(p.Header().Code, p.Header().Status)
	fmt.Println(string(p.Body()))
	// Output:
	// interim: 100
	// 200 OK
	// hello
}
