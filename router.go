package main

import (
	handler "classroom-chat/biz/adaptor/controller"
	"classroom-chat/biz/adaptor/controller/classroom"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizedRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	root := r.Group("/classroom")
	{
		user := root.Group("/user")
		{
			user.POST("/sign_up", classroom.SignUp)
			user.POST("/sign_in", classroom.SignIn)
			user.GET("/info", classroom.GetUserInfo)
		}

		room := root.Group("/room")
		{
			room.POST("/create", classroom.CreateRoom)
			room.POST("/join", classroom.JoinRoom)
			room.GET("/list", classroom.ListRooms)
			room.GET("/details", classroom.GetRoomDetails)
			room.POST("/remove_student", classroom.RemoveStudent)
			room.POST("/delete", classroom.DeleteRoom)
		}

		chat := root.Group("/chat")
		{
			chat.POST("/send", classroom.SendMessage)
			chat.GET("/messages", classroom.GetMessages)
			chat.GET("/subscribe", classroom.SubscribeMessages)
		}

		file := root.Group("/file")
		{
			file.GET("/list", classroom.ListFiles)
			file.POST("/upload", classroom.UploadFile)
			file.POST("/delete", classroom.DeleteFile)
			file.GET("/download", classroom.DownloadFile)
		}
	}
}
