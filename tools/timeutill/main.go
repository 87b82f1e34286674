package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Игровые таймеры (i-frames, кулдауны, break-окна) живут в Unix-миллисекундах.
// Утилита конвертирует их в читаемый вид при разборе логов и сейвов.
func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "now":
		fmt.Println(time.Now().UnixMilli())
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: timeutil format <unix_ms>")
			return
		}
		ms, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.UnixMilli(ms).Format(time.RFC3339Nano))
	case "parse":
		if len(os.Args) < 3 {
			fmt.Println("Usage: timeutil parse <date_string>")
			return
		}
		t, err := time.Parse("2006-01-02 15:04:05", os.Args[2])
		if err != nil {
			fmt.Printf("Invalid date: %v\n", err)
			return
		}
		fmt.Println(t.UnixMilli())
	case "diff":
		if len(os.Args) < 4 {
			fmt.Println("Usage: timeutil diff <ms1> <ms2>")
			return
		}
		a, errA := strconv.ParseInt(os.Args[2], 10, 64)
		b, errB := strconv.ParseInt(os.Args[3], 10, 64)
		if errA != nil || errB != nil {
			fmt.Println("Invalid timestamps")
			return
		}
		fmt.Printf("%dms (%s)\n", b-a, time.Duration(b-a)*time.Millisecond)
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Time Utility - конвертация игрового времени (Unix ms)
Commands:
  now                  - текущее время в миллисекундах
  format <unix_ms>     - преобразовать в читаемый формат
  parse <date_string>  - преобразовать дату в миллисекунды (формат: YYYY-MM-DD HH:MM:SS)
  diff <ms1> <ms2>     - разница между двумя отметками`)
}
