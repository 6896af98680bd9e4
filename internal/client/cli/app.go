// Package cli implements the interactive command-line client.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

type App struct {
	config   *config.Config
	api      *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Signup(ctx, name, email, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.userName = user.Name
	log.Printf("Registered as %s", user.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userName = user.Name
	log.Printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	a.userName = ""
	log.Printf("Logged out")
	return nil
}

func (a *App) List(ctx context.Context) error {
	result, err := a.api.Tasks(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	for _, task := range result {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		printlnFn("[" + mark + "] " + task.ID + "  " + task.Description)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	description, err := GetSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	task, err := a.api.AddTask(ctx, description)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Created task %s", task.ID)
	return nil
}

func (a *App) Complete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.api.CompleteTask(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Task %s completed", id)
	return nil
}

func (a *App) Remove(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Task %s removed", id)
	return nil
}
